package loom

// Version is the current version of Loom.
const Version = "0.1.0"
