// Package config loads typed configuration structs from environment
// variables.
//
// Fields are described with github.com/caarlos0/env tags. Before parsing,
// Load reads dotenv files (".env" by default) through github.com/joho/godotenv
// without overriding variables already exported by the process, so a local
// .env works in development while real environment variables win in
// production.
//
// Missing `required` variables fail the load. Configs implementing Validator
// get a second, programmatic check, which is where rules such as "MONGO_URI is
// required only when the mongo store is selected" live.
//
// # Usage
//
//	var cfg app.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Tests can bypass the process environment entirely:
//
//	err := config.Load(&cfg, config.WithEnvironment(map[string]string{
//	    "SECRET_KEY": strings.Repeat("x", 32),
//	}))
package config
