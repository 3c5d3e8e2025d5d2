package flow

// Navigator abstracts the two ways the pipeline touches the navigation
// context: rewriting the visible address in place, and handing the whole
// browsing session over to an external collaborator (the identity provider
// or the processor's hosted checkout).
type Navigator interface {
	// ReplaceURL rewrites the visible address without triggering a
	// navigation. Used to strip one-time credentials from the URL.
	ReplaceURL(url string)

	// Navigate performs a full navigation to the given URL, leaving the
	// current page.
	Navigate(url string)
}
