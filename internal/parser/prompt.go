package parser

import "strings"

// BuildFormExtractionPrompt returns the strict JSON-only extraction
// prompt wrapped around the OCR text. The rules mirror the canonical
// ParsedForm shape: camelCase keys, string-or-null values, a
// confidenceHints map, and a suggested-but-open formType vocabulary.
func BuildFormExtractionPrompt(ocrText, formTypeHint string) string {
	var b strings.Builder

	b.WriteString(`You are a form extraction engine. You will receive OCR text from a photographed form.

You MUST follow these rules exactly:
- OUTPUT: Return ONLY a single JSON object. No explanations, no markdown, no prose, no backticks.
- FORMAT: The JSON must be syntactically valid and parseable.
- KEYS: Use camelCase for all field names.
- VALUES: All field values must be strings, or null if missing/uncertain.
- CONFIDENCE: Include a top-level "confidenceHints" object mapping each field key to a number between 0 and 1.
- FORM TYPE: Include a top-level "formType" string describing the form, such as:
  - "invoice"
  - "receipt"
  - "shipping_label"
  - "application_form"
  - "tax_form"
  - "medical_form"
  - "generic_form"
- UNKNOWN FIELDS: If a likely field exists but the value is unreadable, still include the key with value null.
- NO EXTRA KEYS: Avoid adding random or speculative fields that are not clearly present in the OCR.
- STRICT JSON: Do NOT wrap the JSON in quotes, do NOT prefix with "Here is the JSON", do NOT include comments or markdown.
- OCR ERRORS: The OCR text may have errors. Use context to infer correct values when possible.
`)

	if formTypeHint != "" {
		b.WriteString("\nThe caller expects this to be a \"" + formTypeHint + "\" form. Use that as a strong hint for \"formType\" unless the text clearly contradicts it.\n")
	}

	b.WriteString(`
Example shape (illustrative only, do not copy values):

{
  "formType": "invoice",
  "invoiceNumber": "INV-004128",
  "date": "2025-03-18",
  "vendor": "Northwind Traders LLC",
  "totalAmount": "1274.50",
  "currency": "USD",
  "confidenceHints": {
    "invoiceNumber": 0.86,
    "date": 0.95,
    "vendor": 0.62,
    "totalAmount": 0.88,
    "currency": 0.92
  }
}

Now process this OCR text and output ONLY the JSON object:

"""
`)
	b.WriteString(strings.TrimSpace(ocrText))
	b.WriteString("\n\"\"\"\n")

	return b.String()
}
