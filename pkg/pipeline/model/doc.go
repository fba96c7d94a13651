// Package model holds the types shared by the pipeline and its options: the description
// of a step and the hooks a pipeline option implements.
package model
