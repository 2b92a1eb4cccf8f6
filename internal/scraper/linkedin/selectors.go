package linkedin

// LinkedIn URLs and DOM selectors.
// LinkedIn reshuffles class names often; update these when scraping breaks.

const (
	baseURL  = "https://www.linkedin.com"
	loginURL = baseURL + "/login"
)

const (
	// Login form
	UsernameInput = "#username"
	PasswordInput = "#password"

	// Present on every authenticated page
	GlobalNav = "#global-nav"

	// Profile / company page body
	MainContent = "main"
)

// Post containers. Only the outermost match is used, occludable-update
// usually wraps a feed-shared-update-v2.
const PostContainer = "div.feed-shared-update-v2, div.occludable-update"

// Post text, most specific first.
var PostTextSelectors = []string{
	"div.update-components-text",
	"div.feed-shared-update-v2__description-wrapper",
	"span.break-words",
	"div.feed-shared-text",
	"div.feed-shared-inline-show-more-text",
	"div.feed-shared-update-v2__commentary",
}

// Elements inside a container that never hold post text.
const postChrome = "button, .visually-hidden, .social-details-social-counts, .update-components-actor, script, style"

// Inline login errors. Both elements are always in the login page and
// only shown when the form is rejected.
var LoginErrors = []string{"#error-for-username", "#error-for-password"}

// Lowercased title / h1 text of a security challenge page. Only the page
// heading is checked, never the body.
var securityCheckMarkers = []string{"security check", "security verification"}

// LinkedIn's error page
const notFoundPage = "body.page-not-found, .not-found-404"

const notFoundTitle = "page not found"

// Profile Featured section, found through its anchor or heading
const (
	FeaturedAnchor  = "#featured"
	FeaturedHeading = "Featured"
	FeaturedItem    = "li"
	// used when the section has no list
	FeaturedCard = "div.artdeco-card"
)

const maxFeaturedItems = 10
