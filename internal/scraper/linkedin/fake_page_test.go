package linkedin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const feedURL = baseURL + "/feed/"

// fakePage is a scripted stand-in for a browser session.
type fakePage struct {
	current string
	// content served per URL
	content map[string]string
	// goto target → URL the browser ends up on
	redirect map[string]string
	gotoErr  map[string]error
	// selectors that never become visible
	missing map[string]bool

	loginOK bool
	// inline login error shown after submitting
	rejected bool
	// landing URL after submitting the form when loginOK is false
	failURL string
	// GlobalNav appears only from this WaitVisible call on (0 = immediately)
	navAppearsOnCall int
	navCalls         int

	heights     []int
	heightCalls int

	typed     map[string]string
	submitted bool
	visited   []string
	scrolls   int
	closed    int
}

func newFakePage() *fakePage {
	return &fakePage{
		content:  map[string]string{},
		redirect: map[string]string{},
		gotoErr:  map[string]error{},
		missing:  map[string]bool{},
		typed:    map[string]string{},
		loginOK:  true,
		heights:  []int{1000},
	}
}

func (f *fakePage) Goto(url string) error {
	f.visited = append(f.visited, url)
	if err := f.gotoErr[url]; err != nil {
		return err
	}
	if to, ok := f.redirect[url]; ok {
		url = to
	}
	f.current = url
	return nil
}

func (f *fakePage) URL() string { return f.current }

func (f *fakePage) Content() (string, error) { return f.content[f.current], nil }

func (f *fakePage) WaitVisible(selector string, _ time.Duration) error {
	if selector == GlobalNav {
		f.navCalls++
		if f.submitted && f.loginOK && f.navCalls > f.navAppearsOnCall {
			return nil
		}
		return fmt.Errorf("timeout waiting for %s", selector)
	}
	for _, loginErr := range LoginErrors {
		if selector == loginErr {
			if f.submitted && f.rejected && selector == "#error-for-password" {
				return nil
			}
			return fmt.Errorf("timeout waiting for %s", selector)
		}
	}
	if f.missing[selector] {
		return fmt.Errorf("timeout waiting for %s", selector)
	}
	return nil
}

func (f *fakePage) Type(selector, text string) error {
	if f.missing[selector] {
		return fmt.Errorf("no element %s", selector)
	}
	f.typed[selector] = text
	return nil
}

func (f *fakePage) Press(selector, key string) error {
	if key != "Enter" {
		return fmt.Errorf("unexpected key %s", key)
	}
	f.submitted = true
	if f.loginOK && f.failURL == "" {
		f.current = feedURL
	} else if f.failURL != "" {
		f.current = f.failURL
	}
	return nil
}

func (f *fakePage) ScrollBy(int) error {
	f.scrolls++
	return nil
}

func (f *fakePage) ScrollHeight() (int, error) {
	i := f.heightCalls
	if i >= len(f.heights) {
		i = len(f.heights) - 1
	}
	f.heightCalls++
	return f.heights[i], nil
}

func (f *fakePage) Close() error {
	f.closed++
	return nil
}

// fakeLauncher hands out one fakePage and counts launches.
type fakeLauncher struct {
	page     *fakePage
	err      error
	launches int
}

func (l *fakeLauncher) Launch(ctx context.Context) (Page, error) {
	l.launches++
	if l.err != nil {
		return nil, l.err
	}
	return l.page, nil
}

func personURL(slug string) string  { return baseURL + "/in/" + slug + "/recent-activity/all/" }
func profileURL(slug string) string { return baseURL + "/in/" + slug + "/" }
func companyURL(slug string) string { return baseURL + "/company/" + slug + "/posts/" }

// profileHTML renders a profile page whose Featured section pins items.
func profileHTML(items ...string) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Jane Doe | LinkedIn</title></head><body><main>`)
	b.WriteString(`<section class="artdeco-card"><h1>Jane Doe</h1></section>`)
	if len(items) > 0 {
		b.WriteString(`<section class="artdeco-card pv-profile-card"><div id="featured" class="pv-profile-card__anchor"></div>`)
		b.WriteString(`<h2><span aria-hidden="true">Featured</span><span class="visually-hidden">Featured</span></h2><ul>`)
		for _, item := range items {
			fmt.Fprintf(&b, `<li><div class="artdeco-card"><p>%s</p><button>Like</button></div></li>`, item)
		}
		b.WriteString(`</ul></section>`)
	}
	b.WriteString(`</main></body></html>`)
	return b.String()
}

// feedHTML renders posts the way an activity page does, each commentary
// wrapped in an occludable container.
func feedHTML(posts ...string) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Activity | LinkedIn</title></head><body><main>`)
	for i, p := range posts {
		fmt.Fprintf(&b, `<div class="occludable-update"><div class="feed-shared-update-v2" data-urn="urn:li:activity:%d">`, i)
		b.WriteString(`<div class="update-components-actor">Jane Doe • 1st</div>`)
		fmt.Fprintf(&b, `<div class="update-components-text"><span dir="ltr">%s</span></div>`, p)
		b.WriteString(`<div class="social-details-social-counts">12 reactions</div><button>Like</button>`)
		b.WriteString(`</div></div>`)
	}
	b.WriteString(`</main></body></html>`)
	return b.String()
}

var errBoom = errors.New("boom")
