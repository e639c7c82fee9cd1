package platform

// Product identity reported by the status surface and the version command.
const (
	ProductName    = "AI Behar Platform"
	ProductVersion = "2.0.0"
)
