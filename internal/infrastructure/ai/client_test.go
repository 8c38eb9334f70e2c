package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chefcode/backend/internal/infrastructure/config"
)

// newStubClient points a Client at a local server that replies with the given
// assistant message content for every chat completion.
func newStubClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.AIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

func completionReply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestClientAvailability(t *testing.T) {
	c := NewClient(&config.AIConfig{Model: "gpt-4o-mini", BaseURL: "https://api.openai.com/v1", Timeout: time.Second}, zap.NewNop())
	assert.False(t, c.Available())

	_, err := c.ParseCommand(context.Background(), "add 5 kg flour", "en")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = c.ParseRecipe(context.Background(), "add recipe pizza")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestParseCommand(t *testing.T) {
	t.Run("decodes a complete parse", func(t *testing.T) {
		c := newStubClient(t, completionReply(`{"status":"complete","parsed_data":{"item_name":"Flour","unit":"kg","quantity":5,"unit_price":1.2,"type":"grocery","lot_number":null,"expiry_date":null}}`))

		result, err := c.ParseCommand(context.Background(), "add 5 kg of flour at 1.20", "en")
		require.NoError(t, err)
		assert.Equal(t, "complete", result.Status)
		require.NotNil(t, result.ParsedData)
		assert.Equal(t, "Flour", result.ParsedData.ItemName)
		assert.Equal(t, 5.0, result.ParsedData.Quantity)
	})

	t.Run("sends the requested language's system prompt", func(t *testing.T) {
		var captured chatRequest
		c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			completionReply(`{"status":"ask_price","message":"Prezzo?"}`)(w, r)
		})

		_, err := c.ParseCommand(context.Background(), "aggiungi 5 kg di farina", "it")
		require.NoError(t, err)
		require.Len(t, captured.Messages, 2)
		assert.Contains(t, captured.Messages[0].Content, "Sei l'AI parser di ChefCode")
		assert.Equal(t, "gpt-4o-mini", captured.Model)
	})

	t.Run("tolerates a fenced reply", func(t *testing.T) {
		c := newStubClient(t, completionReply("```json\n{\"status\":\"ask_price\",\"message\":\"Price?\"}\n```"))

		result, err := c.ParseCommand(context.Background(), "add flour", "en")
		require.NoError(t, err)
		assert.Equal(t, "ask_price", result.Status)
	})

	t.Run("propagates API errors", func(t *testing.T) {
		c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		})

		_, err := c.ParseCommand(context.Background(), "add flour", "en")
		assert.Error(t, err)
	})
}

func TestDetectIntent(t *testing.T) {
	t.Run("decodes a structured intent", func(t *testing.T) {
		c := newStubClient(t, completionReply(`{"intent":"add_inventory","confidence":0.97,"entities":{"item_name":"rice","quantity":5,"unit":"kg","price":2.5},"requires_confirmation":true,"response_message":"Add 5 kg of rice?"}`))

		result, err := c.DetectIntent(context.Background(), "add 5 kg of rice at 2.50", nil)
		require.NoError(t, err)
		assert.Equal(t, "add_inventory", result.Intent)
		assert.True(t, result.RequiresConfirmation)
		assert.Equal(t, "rice", result.Entities["item_name"])
	})

	t.Run("degrades to unknown on an unparseable reply", func(t *testing.T) {
		c := newStubClient(t, completionReply("Sorry, I could not process that."))

		result, err := c.DetectIntent(context.Background(), "gibberish", nil)
		require.NoError(t, err)
		assert.Equal(t, "unknown", result.Intent)
		assert.NotEmpty(t, result.ResponseMessage)
		assert.NotNil(t, result.Entities)
	})

	t.Run("degrades to unknown when the API is down", func(t *testing.T) {
		c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		result, err := c.DetectIntent(context.Background(), "add rice", nil)
		require.NoError(t, err)
		assert.Equal(t, "unknown", result.Intent)
	})
}

func TestParseRecipe(t *testing.T) {
	c := newStubClient(t, completionReply(`{"recipe_name":"Pizza","ingredients":[{"name":"flour","quantity":500,"unit":"grams"},{"name":"salt","quantity":null,"unit":null}],"yield_qty":null,"yield_unit":null,"instructions":""}`))

	parsed, err := c.ParseRecipe(context.Background(), "Add recipe Pizza with flour 500 grams and salt")
	require.NoError(t, err)
	assert.Equal(t, "Pizza", parsed.RecipeName)
	require.Len(t, parsed.Ingredients, 2)
	require.NotNil(t, parsed.Ingredients[0].Quantity)
	assert.Equal(t, 500.0, *parsed.Ingredients[0].Quantity)
	assert.Nil(t, parsed.Ingredients[1].Quantity)
	assert.Nil(t, parsed.YieldQty)
}

func TestExtractLineItems(t *testing.T) {
	t.Run("sends the image as a data URL and decodes line items", func(t *testing.T) {
		var rawBody map[string]any
		c := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
			completionReply(`{"line_items":[{"description":"POLLO PETTO","type":"carne","quantity":1,"unit":"KG","unit_price":7.2,"total_price":7.2}]}`)(w, r)
		})

		items, err := c.ExtractLineItems(context.Background(), []byte("fake-image"), "image/png")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "POLLO PETTO", items[0].Description)
		assert.Equal(t, 7.2, items[0].UnitPrice)

		messages := rawBody["messages"].([]any)
		user := messages[1].(map[string]any)
		parts := user["content"].([]any)
		imagePart := parts[1].(map[string]any)
		url := imagePart["image_url"].(map[string]any)["url"].(string)
		assert.Contains(t, url, "data:image/png;base64,")
	})

	t.Run("rejects a reply without JSON", func(t *testing.T) {
		c := newStubClient(t, completionReply("no structured data found"))

		_, err := c.ExtractLineItems(context.Background(), []byte("img"), "image/jpeg")
		assert.Error(t, err)
	})
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
	}
	for i, tc := range cases {
		assert.Equal(t, tc.want, stripFences(tc.in), fmt.Sprintf("case %d", i))
	}
}
