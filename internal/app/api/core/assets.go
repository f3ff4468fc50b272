package core

import "embed"

//go:embed assets/tpl
var apiTemplates embed.FS
