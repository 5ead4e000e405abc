package api

import (
	"embed"
	"io/fs"
)

//go:embed static/dashboard.html
var dashboardAssets embed.FS

// dashboardFS serves the status page with static/ stripped.
var dashboardFS = mustSub(dashboardAssets, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
