package model

// DrawSettings controls how a tray layout is mapped onto a drawing surface.
type DrawSettings struct {
	Scale  float64 `json:"scale"`  // px per mm
	Margin float64 `json:"margin"` // px around the tray outline
}

func DefaultDrawSettings() DrawSettings {
	return DrawSettings{
		Scale:  1.0,
		Margin: CanvasMargin,
	}
}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Drawing defaults
	DefaultScale float64 `json:"default_scale"`

	// Export defaults
	OutputDir    string `json:"output_dir"`
	PDFPageSize  string `json:"pdf_page_size"` // "A4", "A3", ...
	ReportHeader string `json:"report_header"` // optional company line on the report
	ReportFooter string `json:"report_footer"` // text template, see export.FillTemplate

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultDrawSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultDrawSettings()
	return AppConfig{
		DefaultScale:   defaults.Scale,
		OutputDir:      ".",
		PDFPageSize:    "A4",
		ReportFooter:   "Occupied width: {DiametersSum} mm, free space: {FreeSpace} %",
		RecentProjects: []string{},
		Theme:          "system",
	}
}

// ApplyToSettings copies the configured defaults into DrawSettings.
func (c AppConfig) ApplyToSettings(s *DrawSettings) {
	if c.DefaultScale > 0 {
		s.Scale = c.DefaultScale
	}
}

// AddRecentProject moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	out := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			out = append(out, p)
		}
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	c.RecentProjects = out
}
