package catalog

// Page is one page of the catalog listing. Only Results is consumed.
type Page struct {
	Count    int      `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Record `json:"results"`
}

// Record is a remote catalog entry. It only lives for the duration of a seed.
type Record struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	Authors       []Person          `json:"authors"`
	Subjects      []string          `json:"subjects"`
	Summaries     []string          `json:"summaries"`
	Languages     []string          `json:"languages"`
	DownloadCount int64             `json:"download_count"`
	Formats       map[string]string `json:"formats,omitempty"`
}

// Person is an author entry.
type Person struct {
	Name string `json:"name"`
}

// CoverURL returns the JPEG cover reference, if the record has one.
func (r Record) CoverURL() string {
	return r.Formats["image/jpeg"]
}
