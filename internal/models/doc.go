// Package models defines the core domain models for HomeHero.
//
// # Models
//
//   - Profile: a registered user with a chore score and two running
//     expense balances (what they owe, what they are owed)
//   - Household: a group of profiles sharing chores and expenses,
//     joined via a 6-digit home code
//   - Chore: a unit of work assignable to one household member,
//     optionally recurring and rotating among members
//   - Expense / ExpenseSplit: a shared cost fronted by one profile and
//     divided equally among the payer and the listed participants
//   - HouseholdInvite: a pending/accepted/declined invitation to join
//     a household
//   - Grocery: a shopping-list item scoped to a household
//   - Schedule: one weekly availability document per profile
//
// # Design Principles
//
//  1. IDs are UUID strings; relationships are ID strings, never pointers,
//     to avoid circular references.
//  2. Timestamps are Unix seconds (int64). Calendar dates (chore start/end)
//     are "YYYY-MM-DD" strings since they carry no time-of-day.
//  3. Models are plain data; all invariants live in the service packages.
package models
