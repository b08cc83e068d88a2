package gatewaykit

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Gateway versions and encodings a Shard can dial.
var (
	SupportedVersions  = []string{"8", "9", "10"}
	SupportedEncodings = []string{"json"}
)

var (
	ErrURLScheme             = errors.New("gateway url must use the ws or wss scheme")
	ErrUnsupportedAPIVersion = fmt.Errorf("gateway version must be one of %v", SupportedVersions)
	ErrUnsupportedAPICodec   = fmt.Errorf("gateway encoding must be one of %v", SupportedEncodings)
	ErrIncompleteDialURL     = errors.New("gateway url needs a scheme and the v and encoding query parameters")
)

// GatewayURL appends the version and encoding query to the gateway base url:
//
//	GatewayURL("wss://gateway.discord.gg", 8, "json") => "wss://gateway.discord.gg/?v=8&encoding=json"
func GatewayURL(base string, version int, encoding string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "?v=" + strconv.Itoa(version) + "&encoding=" + encoding
}

// ValidateDialURL parses rawURL and checks the scheme, version and encoding
// against what a Shard supports. The normalised url is returned.
//
//	"wss://gateway.discord.gg/?v=10"                => ErrIncompleteDialURL
//	"wss://gateway.discord.gg/?v=10&encoding=json"  => ok
func ValidateDialURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	query := u.Query()
	version, encoding := query.Get("v"), query.Get("encoding")

	switch {
	case u.Scheme == "" || version == "" || encoding == "":
		return "", ErrIncompleteDialURL
	case u.Scheme != "ws" && u.Scheme != "wss":
		return "", ErrURLScheme
	case !slices.Contains(SupportedVersions, version):
		return "", ErrUnsupportedAPIVersion
	case !slices.Contains(SupportedEncodings, encoding):
		return "", ErrUnsupportedAPICodec
	}
	return u.String(), nil
}
