package dom

import (
	"strings"
	"sync"
	"time"
)

// Node is a piece of rendered element content.
type Node interface {
	isNode()
}

// Text is a plain text node.
type Text struct {
	Value string
}

// Image references a remote image. Width and Height are CSS sizes and are
// empty when the image keeps its natural size.
type Image struct {
	Src    string
	Alt    string
	Width  string
	Height string
}

func (Text) isNode()  {}
func (Image) isNode() {}

// Element is a render target whose children can be replaced wholesale.
type Element interface {
	Locator() string
	Replace(nodes ...Node)
}

// Document resolves locators to elements.
type Document interface {
	Lookup(locator string) (Element, bool)
}

// Snapshot is a copy of one element's content at a point in time.
type Snapshot struct {
	Locator   string
	Nodes     []Node
	Version   uint64
	UpdatedAt time.Time
}

// Text returns the concatenated text nodes.
func (s Snapshot) Text() string {
	var b strings.Builder
	for _, n := range s.Nodes {
		if t, ok := n.(Text); ok {
			b.WriteString(t.Value)
		}
	}
	return b.String()
}

// Images returns the image nodes in order.
func (s Snapshot) Images() []Image {
	var out []Image
	for _, n := range s.Nodes {
		if img, ok := n.(Image); ok {
			out = append(out, img)
		}
	}
	return out
}

// Page is an in-memory Document safe for concurrent use. Overlapping writes
// to the same element are not ordered; the last Replace wins.
type Page struct {
	mu       sync.RWMutex
	elements map[string]*Snapshot
	order    []string
	onChange func(Snapshot)
}

// NewPage creates a page with the given elements mounted.
func NewPage(locators ...string) *Page {
	p := &Page{elements: make(map[string]*Snapshot)}
	for _, l := range locators {
		p.Mount(l)
	}
	return p
}

// Mount adds an empty element. Mounting an existing locator is a no-op.
func (p *Page) Mount(locator string) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.elements == nil {
		p.elements = make(map[string]*Snapshot)
	}
	if _, ok := p.elements[locator]; ok {
		return
	}
	p.elements[locator] = &Snapshot{Locator: locator}
	p.order = append(p.order, locator)
}

// OnChange registers fn to be called after every Replace. fn runs on the
// writer's goroutine without the page lock held.
func (p *Page) OnChange(fn func(Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = fn
}

// Lookup implements Document.
func (p *Page) Lookup(locator string) (Element, bool) {
	locator = strings.TrimSpace(locator)
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.elements[locator]; !ok {
		return nil, false
	}
	return &pageElement{page: p, locator: locator}, true
}

// Snapshot returns a copy of the element's current content.
func (p *Page) Snapshot(locator string) (Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.elements[strings.TrimSpace(locator)]
	if !ok {
		return Snapshot{}, false
	}
	return s.clone(), true
}

// Snapshots returns copies of all elements in mount order.
func (p *Page) Snapshots() []Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Snapshot, 0, len(p.order))
	for _, l := range p.order {
		out = append(out, p.elements[l].clone())
	}
	return out
}

func (p *Page) replace(locator string, nodes []Node) {
	p.mu.Lock()
	s, ok := p.elements[locator]
	if !ok {
		p.mu.Unlock()
		return
	}
	s.Nodes = cloneNodes(nodes)
	s.Version++
	s.UpdatedAt = time.Now()
	snap := s.clone()
	fn := p.onChange
	p.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

func (s *Snapshot) clone() Snapshot {
	dup := *s
	dup.Nodes = cloneNodes(s.Nodes)
	return dup
}

func cloneNodes(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	dup := make([]Node, len(nodes))
	copy(dup, nodes)
	return dup
}

type pageElement struct {
	page    *Page
	locator string
}

func (e *pageElement) Locator() string { return e.locator }

func (e *pageElement) Replace(nodes ...Node) { e.page.replace(e.locator, nodes) }
