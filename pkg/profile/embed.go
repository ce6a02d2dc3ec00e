package profile

import (
	"embed"
	"io/fs"
)

//go:embed profiles/*
var embeddedProfiles embed.FS

// EmbeddedFS returns the bundled profiles.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedProfiles, "profiles")
	if err != nil {
		panic(err)
	}
	return sub
}
