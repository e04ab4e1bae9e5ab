package ui

const appName = "farefinder"

// tagline is shown under the search form title.
const tagline = "Compare fares across airlines and agents"
