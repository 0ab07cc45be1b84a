package driven

// StatusBadge is one review status tag inside a rendered page. Implementations
// must be safe to mutate while other goroutines read the owning document.
type StatusBadge interface {
	// ReviewID returns the value of the badge's data-review-id attribute.
	ReviewID() string
	// Text returns the badge's current text content.
	Text() string
	SetText(text string)
	SetAttribute(name, value string)
	// SetClass replaces the whole class attribute.
	SetClass(class string)
}

// BadgeDocument is a live document holding status badges.
type BadgeDocument interface {
	// Badges returns every element carrying a data-review-id attribute, in
	// document order, as of the moment of the call.
	Badges() []StatusBadge
}
