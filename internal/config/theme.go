package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Theme holds the board colors as hex strings
type Theme struct {
	// Preset name: "default" or "monochrome"
	Preset string `yaml:"preset"`

	Accent string `yaml:"accent"`

	// Column header colors, one per status
	Todo       string `yaml:"todo"`
	InProgress string `yaml:"in_progress"`
	Completed  string `yaml:"completed"`

	ColumnBorder   string `yaml:"column_border"`
	SelectedBorder string `yaml:"selected_border"`

	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`
	Error  string `yaml:"error"`
}

func defaultTheme() Theme {
	return Theme{
		Preset:         "default",
		Accent:         "#874BFD",
		Todo:           "#FFD700",
		InProgress:     "#00AFFF",
		Completed:      "#5FD75F",
		ColumnBorder:   "#5F87D7",
		SelectedBorder: "#D75FD7",
		Title:          "#D75FD7",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		Error:          "#FF5F5F",
	}
}

func monochromeTheme() Theme {
	return Theme{
		Preset:         "monochrome",
		Accent:         "#FFFFFF",
		Todo:           "#D0D0D0",
		InProgress:     "#D0D0D0",
		Completed:      "#D0D0D0",
		ColumnBorder:   "#808080",
		SelectedBorder: "#FFFFFF",
		Title:          "#FFFFFF",
		Subtle:         "#6C6C6C",
		Normal:         "#D0D0D0",
		Error:          "#FFFFFF",
	}
}

// ThemePreset returns a preset by name, falling back to the default
func ThemePreset(name string) Theme {
	if name == "monochrome" {
		return monochromeTheme()
	}
	return defaultTheme()
}

// ApplyDefaults fills empty colors from the selected preset
func (t *Theme) ApplyDefaults() {
	preset := ThemePreset(t.Preset)
	if t.Preset == "" {
		t.Preset = preset.Preset
	}

	fillEmpty(
		fallback{&t.Accent, preset.Accent},
		fallback{&t.Todo, preset.Todo},
		fallback{&t.InProgress, preset.InProgress},
		fallback{&t.Completed, preset.Completed},
		fallback{&t.ColumnBorder, preset.ColumnBorder},
		fallback{&t.SelectedBorder, preset.SelectedBorder},
		fallback{&t.Title, preset.Title},
		fallback{&t.Subtle, preset.Subtle},
		fallback{&t.Normal, preset.Normal},
		fallback{&t.Error, preset.Error},
	)
}

// loadThemeFile merges the theme from FLOWBOARD_THEME_FILE over the loaded one
func loadThemeFile(cfg *Config) {
	themeFile := os.Getenv("FLOWBOARD_THEME_FILE")
	if themeFile == "" {
		return
	}

	data, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	// decoding into the existing value keeps colors the file does not set
	var wrapper struct {
		Theme *Theme `yaml:"theme"`
	}
	wrapper.Theme = &cfg.Theme
	_ = yaml.Unmarshal(data, &wrapper)
}
