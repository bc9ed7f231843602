// Package main provides the entry point of PeopleDesk, the role and permission
// service of an HR system. It serves a JSON API with Fiber that lets
// administrators define roles as named bundles of catalog permissions, assign
// them to users and protect every endpoint with permission checks. Roles, users
// and sessions are persisted with gorm on MySQL, PostgreSQL or SQLite.
package main
