// Package display renders models and calculation results for the command
// line in one of three formats: styled terminal tables, plain text, or JSON.
//
// Commands build a view (ModelView, CalculationView) from the domain types
// and hand it to the Renderer for the resolved Format. Terminal styles are
// read from the embedded styles.yaml.
package display
