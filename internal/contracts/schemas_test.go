package contracts

import "testing"

func TestValidateResultPageAcceptsWellFormedEnvelope(t *testing.T) {
	payload := []byte(`{
		"success": true,
		"data": {
			"meta": {"currentPage": 1, "totalPages": 3, "totalItems": 30, "perPage": 12},
			"data": [
				{"id": "L-1", "listingKey": "key-1", "latitude": 40.1, "longitude": -73.9},
				{"id": "L-2", "listingKey": "key-2", "latitude": null, "longitude": null}
			]
		}
	}`)
	if err := ValidateResultPage(payload); err != nil {
		t.Fatalf("well-formed envelope rejected: %v", err)
	}
}

func TestValidateResultPageRejectsMissingMeta(t *testing.T) {
	payload := []byte(`{"success": true, "data": {"data": []}}`)
	if err := ValidateResultPage(payload); err == nil {
		t.Fatal("envelope without meta must be rejected")
	}
}

func TestValidateResultPageRejectsNonJSON(t *testing.T) {
	if err := ValidateResultPage([]byte("<html>502 Bad Gateway</html>")); err == nil {
		t.Fatal("non-JSON payload must be rejected")
	}
}

func TestValidateSuggestionSetAcceptsEmptyGroups(t *testing.T) {
	payload := []byte(`{"success": true, "data": {"city": [], "county": [], "suggestedProperties": []}}`)
	if err := ValidateSuggestionSet(payload); err != nil {
		t.Fatalf("empty groups rejected: %v", err)
	}
}

func TestValidateSuggestionSetRejectsMalformedItem(t *testing.T) {
	payload := []byte(`{"success": true, "data": {"suggestedProperties": [{"title": "Loft"}]}}`)
	if err := ValidateSuggestionSet(payload); err == nil {
		t.Fatal("property suggestion without listingKey must be rejected")
	}
}
