package config

// KeyMappings defines the configurable board key bindings
type KeyMappings struct {
	// Tasks
	MoveTaskLeft  string `yaml:"move_task_left"`
	MoveTaskRight string `yaml:"move_task_right"`
	ViewTask      string `yaml:"view_task"`

	// Navigation
	PrevColumn  string `yaml:"prev_column"`
	NextColumn  string `yaml:"next_column"`
	PrevTask    string `yaml:"prev_task"`
	NextTask    string `yaml:"next_task"`
	NextProject string `yaml:"next_project"`
	PrevProject string `yaml:"prev_project"`

	// Other
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		MoveTaskLeft:  "H",
		MoveTaskRight: "L",
		ViewTask:      "enter",

		PrevColumn:  "h",
		NextColumn:  "l",
		PrevTask:    "k",
		NextTask:    "j",
		NextProject: "tab",
		PrevProject: "shift+tab",

		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fillEmpty(
		fallback{&k.MoveTaskLeft, defaults.MoveTaskLeft},
		fallback{&k.MoveTaskRight, defaults.MoveTaskRight},
		fallback{&k.ViewTask, defaults.ViewTask},
		fallback{&k.PrevColumn, defaults.PrevColumn},
		fallback{&k.NextColumn, defaults.NextColumn},
		fallback{&k.PrevTask, defaults.PrevTask},
		fallback{&k.NextTask, defaults.NextTask},
		fallback{&k.NextProject, defaults.NextProject},
		fallback{&k.PrevProject, defaults.PrevProject},
		fallback{&k.Refresh, defaults.Refresh},
		fallback{&k.ShowHelp, defaults.ShowHelp},
		fallback{&k.Quit, defaults.Quit},
	)
}

type fallback struct {
	dst *string
	def string
}

// fillEmpty sets each empty destination to its default
func fillEmpty(pairs ...fallback) {
	for _, p := range pairs {
		if *p.dst == "" {
			*p.dst = p.def
		}
	}
}
