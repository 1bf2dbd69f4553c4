// Package models defines the quiz domain entities (users, quizzes,
// questions) and their enums, and registers them for automatic table
// creation in dependency order.
package models
