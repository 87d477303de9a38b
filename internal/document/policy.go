package document

// RenderPolicy controls the presentation choices shared by both render targets.
// It is passed by value and never modified by a render.
type RenderPolicy struct {
	SuppressListMarkers bool
	OpenLinksInNewTab   bool
}

// DefaultRenderPolicy returns the policy used by the application. Links always
// open in a new tab.
func DefaultRenderPolicy(suppressListMarkers bool) RenderPolicy {
	return RenderPolicy{
		SuppressListMarkers: suppressListMarkers,
		OpenLinksInNewTab:   true,
	}
}
