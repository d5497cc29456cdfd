// Package service defines the backend-agnostic interface for to-do operations.
package service

// User is an account on the to-do server.
type User struct {
	Email     string
	FirstName string
	LastName  string
}

// Registration holds the fields needed to create a user.
type Registration struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// List is a to-do list.
type List struct {
	ID   int
	Name string
}

// Item is a single to-do item.
type Item struct {
	ID   int
	Name string
}
