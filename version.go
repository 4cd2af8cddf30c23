package storyline

// Version is the release of the storyline module and its binaries.
const Version = "0.3.0"
