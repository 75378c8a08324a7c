package storage

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api"
)

// cloudinaryFolders are the only upload destinations the frontend may sign
// against.
var cloudinaryFolders = []string{"products/", "categories/", "users/", "uploads/"}

// AllowedCloudinaryFolder checks the folder against the whitelist; a missing
// trailing slash is tolerated.
func AllowedCloudinaryFolder(folder string) bool {
	path := folder
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	for _, allowed := range cloudinaryFolders {
		if strings.HasPrefix(path, allowed) {
			return true
		}
	}
	return false
}

// CloudinarySigner hands out upload signatures so the frontend can talk to
// Cloudinary directly; the API secret never leaves this process.
type CloudinarySigner struct {
	cloudName string
	apiKey    string
	apiSecret string
}

func NewCloudinarySigner(cloudName, apiKey, apiSecret string) *CloudinarySigner {
	return &CloudinarySigner{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
	}
}

func (c *CloudinarySigner) Configured() bool {
	return c.cloudName != "" && c.apiKey != "" && c.apiSecret != ""
}

func (c *CloudinarySigner) CloudName() string {
	return c.cloudName
}

func (c *CloudinarySigner) APIKey() string {
	return c.apiKey
}

// Sign produces the SHA-1 signature Cloudinary expects over the exact
// parameter set the widget will send.
func (c *CloudinarySigner) Sign(folder, resourceType string, timestamp int64) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	params := url.Values{}
	params.Set("folder", folder)
	params.Set("resource_type", resourceType)
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))

	return api.SignParameters(params, c.apiSecret)
}
