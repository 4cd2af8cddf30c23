package cli

// Options carries the flags shared by every command.
type Options struct {
	// StoryPath is a YAML/JSON story file or a directory of Markdown nodes.
	// Empty plays the built-in story.
	StoryPath string
	// Root overrides the entry node of a Markdown directory.
	Root     string
	LogLevel string
	Debug    bool
	Strict   bool
}

// PlayOptions configures the interactive player.
type PlayOptions struct {
	Options
	JSON bool
	// Rich enables the banner and Markdown rendering; set when stdout is a terminal.
	Rich bool
}
