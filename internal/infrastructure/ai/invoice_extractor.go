package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chefcode/backend/internal/application/invoice"
)

const invoiceExtractionPrompt = `You are a multilingual AI specialized in extracting and structuring invoice data from images.
Keep all field names in English but preserve content in the same language as the document (e.g., Italian item descriptions).

Read the table structure: detect columns such as "Q.tà", "Quantità", "UM", "Prezzo", "Importo", "Totale" and use them to align each value. Extract numeric values exactly as printed, converting decimal commas to dots.

If the quantity column is missing, blurred, or unclear, compute quantity = total_price / unit_price and verify it against the product description (e.g. "5 KG", "12 PZ", "3 LT").

Infer a "type" for each line in the SAME LANGUAGE as the invoice, one short lowercase word classifying the product (Italian examples: carne, pesce, vegetale, latticino, dispensa, imballaggio, bevanda, altro).

Return ONLY valid JSON with this exact structure, no text or explanations:
{
  "line_items": [
    {
      "description": "...",
      "type": "...",
      "quantity": 0,
      "unit": "...",
      "unit_price": 0,
      "total_price": 0
    }
  ]
}

Numbers must use "." as decimal separator.`

type extractionReply struct {
	LineItems []invoice.LineItem `json:"line_items"`
}

// ExtractLineItems implements invoice.Extractor by sending the invoice image
// to a vision-capable model. Arithmetic validation of the extracted lines is
// the invoice validator's job, not the model's.
func (c *Client) ExtractLineItems(ctx context.Context, image []byte, mimeType string) ([]invoice.LineItem, error) {
	reply, err := c.chat(ctx, []message{
		{Role: "system", Content: invoiceExtractionPrompt},
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: "Extract all line items from this invoice."},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL(image, mimeType)}},
		}},
	}, 0.1, 8192)
	if err != nil {
		return nil, err
	}

	var parsed extractionReply
	if err := json.Unmarshal([]byte(extractJSONObject(reply)), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON in extraction reply: %w", err)
	}
	return parsed.LineItems, nil
}
