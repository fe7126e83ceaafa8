package printlane

import (
	"net/url"

	"printlane-bridge/internal/design"
)

// Links is the pair of operator-facing hyperlinks for one design.
type Links struct {
	// Open points at the design in the Printlane studio web app.
	Open string `json:"open"`
	// Download fetches the finished design file from the export host.
	// The token in the path is the access credential.
	Download string `json:"download,omitempty"`
}

// DesignLinks renders the open/download link pair for a design reference.
// Pure string formatting over fixed URL templates:
//
//	open:     <studio>/designs?id=<design_id>
//	download: <export>/<shop_id>/<design_id>.<design_token>
// A ref without a token yields the open link alone: the export host would
// reject a tokenless download anyway.
func DesignLinks(cfg Config, ref design.Ref) Links {
	cfg = cfg.withDefaults()

	links := Links{
		Open: cfg.StudioURL + "/designs?id=" + url.QueryEscape(ref.ID),
	}
	if ref.Token != "" {
		links.Download = cfg.ExportURL + "/" + url.PathEscape(cfg.ShopID) + "/" +
			url.PathEscape(ref.ID) + "." + url.PathEscape(ref.Token)
	}
	return links
}

// Links renders the link pair for a design using this client's store
// configuration.
func (c *Client) Links(ref design.Ref) Links {
	return DesignLinks(c.cfg, ref)
}
