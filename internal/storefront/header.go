// Package storefront serves the designer widget bootstrap: it parses the
// storefront plugin's client header and assembles the parameters the widget
// script is initialized with.
package storefront

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dunglas/httpsfv"
)

// HeaderClientInfo identifies the storefront plugin making a bootstrap
// request. Wire format (RFC 8941 Dictionary):
//
//	Printlane-Client: version="1.5.5", platform="woocommerce", platform-version="8.4.1"
type HeaderClientInfo struct {
	// Version is the plugin's own release version.
	Version string
	// Platform is the host platform identifier ("woocommerce", "shopify").
	Platform string
	// PlatformVersion is the host platform's release, when the plugin
	// knows it.
	PlatformVersion string
}

// HeaderClient is the request header carrying plugin identification.
const HeaderClient = "Printlane-Client"

// ParseClientHeader extracts plugin identification from a Printlane-Client
// header value. Returns an error if the header is empty, malformed, or
// missing the version key; platform keys are optional.
func ParseClientHeader(header string) (HeaderClientInfo, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return HeaderClientInfo{}, errors.New("empty client header")
	}

	dict, err := httpsfv.UnmarshalDictionary([]string{header})
	if err != nil {
		return HeaderClientInfo{}, fmt.Errorf("invalid client header: %w", err)
	}

	version, err := dictString(dict, "version")
	if err != nil {
		return HeaderClientInfo{}, err
	}
	if version == "" {
		return HeaderClientInfo{}, errors.New("version key not found in client header")
	}

	platform, _ := dictString(dict, "platform")
	platformVersion, _ := dictString(dict, "platform-version")

	return HeaderClientInfo{
		Version:         version,
		Platform:        platform,
		PlatformVersion: platformVersion,
	}, nil
}

// dictString reads a string item from a structured-field dictionary.
// A missing key yields ("", nil); a key of the wrong shape yields an error.
func dictString(dict *httpsfv.Dictionary, key string) (string, error) {
	member, ok := dict.Get(key)
	if !ok {
		return "", nil
	}
	item, ok := member.(httpsfv.Item)
	if !ok {
		return "", fmt.Errorf("%s value must be an item", key)
	}
	s, ok := item.Value.(string)
	if !ok {
		return "", fmt.Errorf("%s value must be a string", key)
	}
	return s, nil
}
