package ui

// Appearance is handed to the identity provider's browser SDK to theme its
// sign-in, sign-up and user button widgets.
type Appearance struct {
	Variables Variables         `json:"variables"`
	Elements  map[string]string `json:"elements"`
}

type Variables struct {
	ColorPrimary         string `json:"colorPrimary"`
	ColorBackground      string `json:"colorBackground"`
	ColorInputBackground string `json:"colorInputBackground"`
	ColorInputText       string `json:"colorInputText"`
	ColorText            string `json:"colorText"`
	ColorTextSecondary   string `json:"colorTextSecondary"`
	ColorDanger          string `json:"colorDanger"`
	BorderRadius         string `json:"borderRadius"`
	FontFamily           string `json:"fontFamily"`
}

// DefaultAppearance returns the dark theme matching the site stylesheet.
func DefaultAppearance() Appearance {
	return Appearance{
		Variables: Variables{
			ColorPrimary:         "hsl(0 0% 9%)",
			ColorBackground:      "hsl(0 0% 9%)",
			ColorInputBackground: "hsl(0 0% 14%)",
			ColorInputText:       "hsl(0 0% 98%)",
			ColorText:            "hsl(0 0% 98%)",
			ColorTextSecondary:   "hsl(0 0% 78%)",
			ColorDanger:          "hsl(0 84.2% 60.2%)",
			BorderRadius:         "0.5rem",
			FontFamily:           "var(--font-geist-sans)",
		},
		Elements: map[string]string{
			"card":                              "bg-card border border-border shadow-lg",
			"headerTitle":                       "text-foreground font-semibold",
			"headerSubtitle":                    "text-foreground/70",
			"socialButtonsBlockButton":          "bg-secondary text-secondary-foreground border border-input hover:bg-secondary/80",
			"socialButtonsBlockButtonText":      "font-medium text-foreground",
			"formButtonPrimary":                 "bg-black text-white hover:bg-gray-800 font-medium",
			"formFieldInput":                    "bg-input border-input text-foreground placeholder:text-muted-foreground/50",
			"formFieldLabel":                    "text-foreground font-medium",
			"footerActionLink":                  "text-foreground hover:text-foreground/80 font-medium",
			"identityPreviewText":               "text-foreground",
			"identityPreviewEditButton":         "text-foreground/70 hover:text-foreground",
			"formFieldInputShowPasswordButton":  "text-foreground/70 hover:text-foreground",
			"otpCodeFieldInput":                 "border-input bg-input text-foreground",
			"formResendCodeLink":                "text-foreground hover:text-foreground/80",
			"badge":                             "bg-secondary text-secondary-foreground",
			"userButtonPopoverCard":             "bg-card border border-border",
			"userButtonPopoverActionButton":     "hover:bg-accent",
			"userButtonPopoverActionButtonText": "text-foreground",
			"userButtonPopoverActionButtonIcon": "text-foreground",
			"userButtonPopoverFooter":           "hidden",
			"formHeaderTitle":                   "text-foreground",
			"formHeaderSubtitle":                "text-foreground/70",
			"formFieldErrorText":                "text-destructive",
			"formFieldSuccessText":              "text-foreground",
			"formFieldHintText":                 "text-foreground/60",
			"dividerLine":                       "bg-border",
			"dividerText":                       "text-foreground/60",
			"alternativeMethodsBlockButton":     "border-input hover:bg-accent",
			"alternativeMethodsBlockButtonText": "text-foreground",
		},
	}
}
