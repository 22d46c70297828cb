package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// MaxLength checks that s holds at most max characters.
func MaxLength(field, s string, max int) error {
	if utf8.RuneCountInString(s) > max {
		return fmt.Errorf("%s must not exceed %d characters", field, max)
	}
	return nil
}

// ValidateWebsite accepts an empty string or an absolute http(s) URL of at most 200 characters.
func ValidateWebsite(website string) error {
	if website == "" {
		return nil
	}
	if err := MaxLength("website", website, 200); err != nil {
		return err
	}
	u, err := url.ParseRequestURI(website)
	if err != nil || u.Host == "" {
		return fmt.Errorf("website must be a valid URL")
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return fmt.Errorf("website must use http or https")
	}
	return nil
}

// ValidateMediaPath accepts an empty string or a relative storage path such as
// "post_images/cover.png". Image bytes live outside this service.
func ValidateMediaPath(field, path string) error {
	if path == "" {
		return nil
	}
	if err := MaxLength(field, path, 255); err != nil {
		return err
	}
	if strings.HasPrefix(path, "/") || strings.Contains(path, "..") || strings.ContainsAny(path, "\\\x00") {
		return fmt.Errorf("%s must be a relative storage path", field)
	}
	return nil
}
