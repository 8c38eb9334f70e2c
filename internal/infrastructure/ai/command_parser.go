package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chefcode/backend/internal/application/chat"
)

// System prompts for the chat inventory parser, one per supported language.
var commandParserPrompts = map[string]string{
	"en": `You are ChefCode's AI Inventory Parser. Parse commands silently and return only JSON.

Extract: item_name, unit, quantity, unit_price, type, lot_number (optional), expiry_date (optional)

Type detection:
beef/chicken/pork/meat → meat
lettuce/tomato/onion/vegetable → vegetable
apple/banana/orange/fruit → fruit
milk/cheese/yogurt/dairy → dairy
water/juice/wine/soda/beverage → beverage
sugar/flour/pasta/rice/bread → grocery
soap/detergent/cleaner → cleaning

Lot number keywords: "lot", "batch", "lot number", "batch number", "LOT"
Expiry date keywords: "expires", "expiry", "best before", "use by", "exp date", "expiration"
Date formats: Parse dates flexibly (e.g., "Dec 25", "12/25/2024", "2024-12-25", "December 25 2024")

If price missing: {"status": "ask_price", "message": "Price?"}
If complete: {"status": "complete", "parsed_data": {"item_name": "...", "unit": "...", "quantity": ..., "unit_price": ..., "type": "...", "lot_number": "..." or null, "expiry_date": "YYYY-MM-DD" or null}}

Output ONLY valid JSON. No explanations.`,

	"it": `Sei l'AI parser di ChefCode. Analizza comandi in silenzio e restituisci solo JSON.

Estrai: item_name, unit, quantity, unit_price, type, lot_number (opzionale), expiry_date (opzionale)

Rilevamento tipo:
manzo/pollo/maiale/carne → meat
lattuga/pomodoro/cipolla/verdura → vegetable
mela/banana/arancia/frutta → fruit
latte/formaggio/yogurt/latticini → dairy
acqua/succo/vino/bevanda → beverage
zucchero/farina/pasta/riso/pane → grocery
sapone/detergente → cleaning

Parole chiave lotto: "lotto", "batch", "numero lotto", "lotto numero"
Parole chiave scadenza: "scadenza", "scade", "da consumarsi entro", "exp", "data scadenza"
Formati data: Analizza date flessibilmente (es. "25 dic", "25/12/2024", "2024-12-25", "25 dicembre 2024")

Se manca prezzo: {"status": "ask_price", "message": "Prezzo?"}
Se completo: {"status": "complete", "parsed_data": {"item_name": "...", "unit": "...", "quantity": ..., "unit_price": ..., "type": "...", "lot_number": "..." o null, "expiry_date": "YYYY-MM-DD" o null}}

Output SOLO JSON valido. Niente spiegazioni.`,
}

// ParseCommand implements chat.CommandParser. The reply is expected to be a
// bare JSON object matching chat.ParseResult.
func (c *Client) ParseCommand(ctx context.Context, prompt, language string) (*chat.ParseResult, error) {
	systemPrompt, ok := commandParserPrompts[language]
	if !ok {
		systemPrompt = commandParserPrompts["en"]
	}

	reply, err := c.chat(ctx, []message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}, 0, 0)
	if err != nil {
		return nil, err
	}

	var result chat.ParseResult
	if err := json.Unmarshal([]byte(extractJSONObject(reply)), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON in model reply: %w", err)
	}
	return &result, nil
}
