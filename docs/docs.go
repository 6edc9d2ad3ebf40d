// Package docs embeds the OpenAPI description of the links API.
package docs

import _ "embed"

//go:embed swagger.yml
var Swagger []byte
