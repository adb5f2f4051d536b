// Package config reads template configuration files (YAML, JSON or HCL) and
// turns them into orchestrator options. Engine names resolve through a
// template.Catalog.
package config
