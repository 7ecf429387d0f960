// Package assistant is the conversational core of the fitness coach.
//
// A user message first goes through Router, an ordered table of keyword
// rules that answer schedule questions (and cancel workouts) straight from
// the user's Schedule. Anything the router does not recognise is forwarded,
// with the whole conversation, to an llm.Client. When the provider reports
// an exhausted quota, Fallback produces a canned answer instead. Orchestrator
// ties these together and records every exchange in a Session.
package assistant
