package version

// Version is the current version of hostprobe.
// Use semantic versioning: MAJOR.MINOR.PATCH
const Version = "0.4.0"
