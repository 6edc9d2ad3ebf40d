package ui

import "html/template"

const (
	SiteTitle       = "Link Shortener"
	SiteDescription = "Shorten your links with ease"
)

type Feature struct {
	Icon        template.HTML
	Title       string
	Description string
}

// Features are the cards of the landing page feature grid, in display order.
var Features = []Feature{
	{
		Icon:        iconLink,
		Title:       "Easy Link Shortening",
		Description: "Transform long URLs into short, shareable links in seconds with our intuitive interface.",
	},
	{
		Icon:        iconBarChart,
		Title:       "Analytics & Tracking",
		Description: "Get detailed insights on clicks, geographic data, and referral sources for all your links.",
	},
	{
		Icon:        iconLock,
		Title:       "Secure & Reliable",
		Description: "Your links are protected with enterprise-grade security and guaranteed uptime.",
	},
	{
		Icon:        iconZap,
		Title:       "Lightning Fast",
		Description: "Ultra-fast redirects ensure your users reach their destination without delay.",
	},
	{
		Icon:        iconGlobe,
		Title:       "Custom Domains",
		Description: "Use your own branded domain to maintain consistency and build trust.",
	},
	{
		Icon:        iconQrCode,
		Title:       "QR Code Generation",
		Description: "Automatically generate QR codes for your shortened links for offline sharing.",
	},
}

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="icon" aria-hidden="true">`

const (
	iconLink     template.HTML = svgOpen + `<path d="M9 17H7A5 5 0 0 1 7 7h2"/><path d="M15 7h2a5 5 0 1 1 0 10h-2"/><line x1="8" x2="16" y1="12" y2="12"/></svg>`
	iconBarChart template.HTML = svgOpen + `<path d="M3 3v18h18"/><path d="M18 17V9"/><path d="M13 17V5"/><path d="M8 17v-3"/></svg>`
	iconLock     template.HTML = svgOpen + `<rect width="18" height="11" x="3" y="11" rx="2" ry="2"/><path d="M7 11V7a5 5 0 0 1 10 0v4"/></svg>`
	iconZap      template.HTML = svgOpen + `<path d="M4 14a1 1 0 0 1-.78-1.63l9.9-10.2a.5.5 0 0 1 .86.46l-1.92 6.02A1 1 0 0 0 13 10h7a1 1 0 0 1 .78 1.63l-9.9 10.2a.5.5 0 0 1-.86-.46l1.92-6.02A1 1 0 0 0 11 14z"/></svg>`
	iconGlobe    template.HTML = svgOpen + `<circle cx="12" cy="12" r="10"/><path d="M12 2a14.5 14.5 0 0 0 0 20 14.5 14.5 0 0 0 0-20"/><path d="M2 12h20"/></svg>`
	iconQrCode   template.HTML = svgOpen + `<rect width="5" height="5" x="3" y="3" rx="1"/><rect width="5" height="5" x="16" y="3" rx="1"/><rect width="5" height="5" x="3" y="16" rx="1"/><path d="M21 16h-3a2 2 0 0 0-2 2v3"/><path d="M21 21v.01"/><path d="M12 7v3a2 2 0 0 1-2 2H7"/><path d="M3 12h.01"/><path d="M12 3h.01"/><path d="M12 16v.01"/><path d="M16 12h1"/><path d="M21 12v.01"/><path d="M12 21v-1"/></svg>`
)
