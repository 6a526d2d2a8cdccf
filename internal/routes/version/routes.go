package version

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

const serviceName = "webcheckers"

type VersionResponse struct {
	Service string `json:"service"`
	Commit  string `json:"commit"`
	Go      string `json:"go"`
}

var Version = loadVersion()

// loadVersion reads the commit the binary was built from. It is "unknown" for builds outside a git checkout.
func loadVersion() VersionResponse {
	version := VersionResponse{Service: serviceName, Commit: "unknown"}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}

	version.Go = info.GoVersion
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			version.Commit = setting.Value
		}
	}

	return version
}

func SetupRoutes(app *fiber.App) {
	versionGroup := app.Group("/version")
	versionGroup.Get("/", versionHandler)
}

func versionHandler(c *fiber.Ctx) error {
	return c.JSON(Version)
}
