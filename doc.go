// Package enver scaffolds and validates dotenv configuration files from a
// declared list of expected environment variables.
//
// It supports:
//  1. Writing a commented template (Manager.Init) with one block per declared
//     entry, refusing to overwrite an existing file.
//  2. Loading the file, or an optional fallback, into an environment store
//     without overwriting variables already set (Manager.Load).
//  3. Reporting declared variables that are still missing, bucketed by
//     importance, through optional info/warn/error sinks and a returned Tally.
//  4. Reading declarations from YAML or JSON schema files (LoadEntries).
//
// Typical usage:
//
//	m, err := enver.New(enver.Config{
//	    Entries: []enver.Entry{{
//	        Name:       "LOGLEVEL",
//	        Title:      "Log level",
//	        Default:    "info",
//	        Importance: enver.Error,
//	    }},
//	    File:     "production.env",
//	    Fallback: "default.env",
//	    Logger:   sinks.Default(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tally, err := m.Load()
//	if err != nil || tally.Errors > 0 {
//	    os.Exit(1)
//	}
package enver
