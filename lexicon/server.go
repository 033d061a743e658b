package lexicon

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wfunc/scrabbleserver/logger"
)

// Handler serves the dictionary over HTTP:
//
//	GET  /dictionary                 full word list
//	GET  /dictionary/search?q=WORD   single word check
//	POST /dictionary/validate-words  batch check
//	GET  /dictionary/stats           dictionary statistics
func Handler(lex *Lexicon) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/dictionary", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			words := lex.Words()
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"count": len(words),
				"words": words,
			})
		})

		r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
			word := req.URL.Query().Get("q")
			if word == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error":   `missing query parameter "q"`,
					"example": "/dictionary/search?q=שלום",
				})
				return
			}
			writeJSON(w, http.StatusOK, searchResponse{Word: word, Valid: lex.IsValid(word)})
		})

		r.Post("/validate-words", func(w http.ResponseWriter, req *http.Request) {
			var in validateRequest
			if err := json.NewDecoder(req.Body).Decode(&in); err != nil || in.Words == nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error":   `request body must contain a "words" array`,
					"example": `{"words": ["שלום", "עולם"]}`,
				})
				return
			}

			results := make([]WordResult, len(in.Words))
			allValid := true
			for i, word := range in.Words {
				valid := lex.IsValid(word)
				results[i] = WordResult{Word: word, Valid: valid}
				allValid = allValid && valid
			}
			writeJSON(w, http.StatusOK, validateResponse{Results: results, AllValid: allValid})
		})

		r.Get("/stats", func(w http.ResponseWriter, req *http.Request) {
			words := lex.Words()
			sample := words
			if len(sample) > 10 {
				sample = sample[:10]
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"totalWords":   len(words),
				"sampleWords":  sample,
				"serverStatus": "running",
			})
		})
	})

	return r
}

// Serve runs the dictionary service. Blocks until the listener fails.
func Serve(addr string, lex *Lexicon) error {
	logger.Log.Infof("Dictionary service listening on %s with %d words", addr, lex.Count())
	return http.ListenAndServe(addr, Handler(lex))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Log.Errorf("Failed to encode dictionary response: %v", err)
	}
}
