package browser

// stealthScript is installed before every navigation to mask the usual
// headless-automation signals Google checks for.
const stealthScript = `
// Hide webdriver
Object.defineProperty(navigator, 'webdriver', {
	get: () => undefined
});

// Spoof plugins
Object.defineProperty(navigator, 'plugins', {
	get: () => [1, 2, 3, 4, 5]
});

// Spoof languages
Object.defineProperty(navigator, 'languages', {
	get: () => ['en-US', 'en']
});

// Chrome runtime object expected on real Chrome
window.chrome = {
	runtime: {}
};

// Align the permissions API with the notification permission state
const originalQuery = window.navigator.permissions.query;
window.navigator.permissions.query = (parameters) => (
	parameters.name === 'notifications' ?
		Promise.resolve({ state: Notification.permission }) :
		originalQuery(parameters)
);
`
