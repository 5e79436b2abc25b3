package metadata

import (
	"net/url"
	"path"
	"strings"
)

const ipfsScheme = "ipfs://"

// NormalizeImage rewrites an image reference.
//
// With gatewayURLs set, http(s) gateway URLs are first converted to ipfs://
// URIs: both path style (https://host/ipfs/<cid>/<file>) and subdomain style
// (https://<cid>.ipfs.host/<file>) are recognized.
//
// With imageCID set, bare file names and ipfs:// URIs that name a file are
// pointed at ipfs://<imageCID>/<file>. Other URLs are left untouched.
func NormalizeImage(image, imageCID string, gatewayURLs bool) string {
	if image == "" {
		return image
	}

	if gatewayURLs {
		if cidPath, ok := gatewayCIDPath(image); ok {
			image = ipfsScheme + cidPath
		}
	}

	if imageCID == "" {
		return image
	}

	var file string
	switch {
	case strings.HasPrefix(image, ipfsScheme):
		rest := strings.TrimPrefix(image, ipfsScheme)
		i := strings.LastIndex(rest, "/")
		if i < 0 || i == len(rest)-1 {
			// A bare CID names no file.
			return image
		}
		file = rest[i+1:]
	case strings.Contains(image, "://"):
		return image
	default:
		file = path.Base(strings.ReplaceAll(image, "\\", "/"))
	}

	return ipfsScheme + imageCID + "/" + file
}

// gatewayCIDPath extracts "<cid>/<path>" from an IPFS gateway URL.
func gatewayCIDPath(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}

	if i := strings.Index(u.Path, "/ipfs/"); i >= 0 {
		rest := strings.Trim(u.Path[i+len("/ipfs/"):], "/")
		if rest != "" {
			return rest, true
		}
		return "", false
	}

	if cid, _, ok := strings.Cut(u.Host, ".ipfs."); ok && cid != "" {
		rest := strings.Trim(u.Path, "/")
		if rest == "" {
			return cid, true
		}
		return cid + "/" + rest, true
	}

	return "", false
}
