// Package triage provides the business boundary for triagedesk's support ticket
// triage. It defines the Classifier (a pure keyword heuristic), the Service
// (request IDs, tracing, metrics hooks, async notification) and domain models.
package triage
