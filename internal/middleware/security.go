// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// contentSecurityPolicy allows the site's own scripts and styles plus images
// from the two CDNs content is hosted on.
const contentSecurityPolicy = "default-src 'self'; " +
	"img-src 'self' data: https://cdn.sanity.io https://res.cloudinary.com; " +
	"script-src 'self'; style-src 'self'; connect-src 'self'; " +
	"frame-ancestors 'self'; base-uri 'self'; form-action 'self'"

// SecureHeaders adds security-related HTTP headers to every response.
// hsts adds Strict-Transport-Security and should only be set when the site
// is served over TLS.
func SecureHeaders(hsts bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "SAMEORIGIN")
			h.Set("X-XSS-Protection", "0")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), interest-cohort=()")
			h.Set("Content-Security-Policy", contentSecurityPolicy)
			if hsts {
				h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
