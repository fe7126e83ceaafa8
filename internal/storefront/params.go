package storefront

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Widget defaults applied when the store leaves them unconfigured.
const (
	DefaultScriptURL      = "https://designer.printlane.com/js/include.js"
	DefaultButtonSelector = ".single_add_to_cart_button"
)

// blockCartMinVersion is the first WooCommerce release that ships the
// block-based cart and checkout as the default experience. Older stores get
// the classic shortcode markup.
const blockCartMinVersion = "v8.3.0"

// Settings is the store-level widget configuration, resolved from store
// config by the caller.
type Settings struct {
	ShopID            string
	Language          string
	AddToCartText     string
	CustomizationText string
	ButtonSelector    string
	CartThumbnails    bool
	HideReference     bool
}

// Params is the bootstrap document the storefront plugin initializes the
// designer widget with.
type Params struct {
	Shop              string `json:"shop"`
	ScriptURL         string `json:"scriptUrl"`
	Language          string `json:"language,omitempty"`
	AddToCartText     string `json:"addToCartText,omitempty"`
	CustomizationText string `json:"customizationText,omitempty"`
	ButtonSelector    string `json:"buttonSelector"`
	CartThumbnails    bool   `json:"cartThumbnails"`
	HideReference     bool   `json:"hideReference"`

	// BlockCart tells the plugin to render block-compatible cart markup
	// instead of the classic shortcode hooks.
	BlockCart bool `json:"blockCart"`
}

// BuildParams assembles widget parameters for one bootstrap request.
func BuildParams(s Settings, client HeaderClientInfo) Params {
	selector := s.ButtonSelector
	if selector == "" {
		selector = DefaultButtonSelector
	}
	return Params{
		Shop:              s.ShopID,
		ScriptURL:         DefaultScriptURL,
		Language:          s.Language,
		AddToCartText:     s.AddToCartText,
		CustomizationText: s.CustomizationText,
		ButtonSelector:    selector,
		CartThumbnails:    s.CartThumbnails,
		HideReference:     s.HideReference,
		BlockCart:         SupportsBlockCart(client),
	}
}

// SupportsBlockCart reports whether the client's platform renders the
// block-based cart. Only WooCommerce is versioned this way; an unknown or
// unparsable platform version means classic markup.
func SupportsBlockCart(client HeaderClientInfo) bool {
	if client.Platform != "woocommerce" || client.PlatformVersion == "" {
		return false
	}
	v := canonicalVersion(client.PlatformVersion)
	if !semver.IsValid(v) {
		return false
	}
	return semver.Compare(v, blockCartMinVersion) >= 0
}

// canonicalVersion maps a platform release string ("8.4.1", "8.4") onto the
// semver form the comparison helpers accept.
func canonicalVersion(s string) string {
	v := "v" + strings.TrimPrefix(s, "v")
	if c := semver.Canonical(v); c != "" {
		return c
	}
	return v
}
