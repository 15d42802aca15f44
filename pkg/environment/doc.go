// Package environment names the deployment environments the application
// understands and normalizes the short aliases operators tend to type into
// APP_ENV ("prod", "stage", "dev").
//
// # Usage
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	if env.IsProduction() {
//	    // production-only behaviour
//	}
//
// Unknown or empty values resolve to Development so a missing variable never
// turns on production behaviour by accident.
package environment
