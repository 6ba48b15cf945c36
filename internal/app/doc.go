// Package app is the composition root for the storeops console.
//
// Run loads configuration, opens the structured log file and the persisted
// session, builds the API client, and hands everything to the UI. Business
// logic lives in the domain packages (api, session, collection, workflow,
// ui); this package only connects them.
package app
