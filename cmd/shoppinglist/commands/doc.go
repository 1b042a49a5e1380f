// Package commands defines the shoppinglist CLI.
//
// Commands
//
//   - lists       Print current (or --archived) shopping lists
//   - products    Print the products of one list
//   - create      Create a shopping list
//   - add         Add a product to a list
//   - archive     Move a list to the archive
//   - unarchive   Move a list back to the current lists
//   - remove      Remove a product from a list
//   - shell       Browse and edit lists interactively
//   - config      Write the effective configuration as TOML
//
// # Implementation
//
// The root command loads the configuration and builds a shoppinglist.App
// before any subcommand runs. Every command drives the same pieces a
// graphical front end would: it navigates with the App's Navigator, starts
// mutations on its screen state, and prints the settled snapshot.
package commands
