// Package service contains the application's use-case layer. Services
// orchestrate domain entities, stores, and platform dependencies behind
// interfaces so HTTP handlers stay thin.
package service
