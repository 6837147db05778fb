package config

// SiteConfig holds per-host configuration overrides.
// This allows keeping session cookies or auth headers for frequently
// crawled sites in the config file instead of repeating them on the
// command line.
type SiteConfig struct {
	// Cookie is an HTTP cookie to send when crawling this host.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers to include in requests to this host.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Depth overrides the global crawl depth for this host.
	// Negative or absent means the global depth is used; depth 0 is a
	// meaningful override ("seed page only") and must survive merging,
	// which is why the zero value cannot double as "unset" here.
	Depth *int `yaml:"depth,omitempty"`
}

// File represents the structure of the .scuwl configuration file.
type File struct {
	// Sites maps host names to their overrides, e.g. "example.com".
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains overrides applied to every host unless the
	// host-specific entry sets its own value.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a host, merging the
// host-specific entry over the defaults.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := cf.Defaults

	if site, ok := cf.Sites[host]; ok {
		if site.Cookie != "" {
			result.Cookie = site.Cookie
		}
		if site.Depth != nil {
			result.Depth = site.Depth
		}
		if len(site.Headers) > 0 {
			// Copy rather than write through, so merging never mutates
			// the shared Defaults map.
			merged := make(map[string]string, len(result.Headers)+len(site.Headers))
			for k, v := range result.Headers {
				merged[k] = v
			}
			for k, v := range site.Headers {
				merged[k] = v
			}
			result.Headers = merged
		}
	}

	return result
}
