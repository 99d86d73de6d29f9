package obituary

const PlaceholderPhoto = "images/placeholder-small.svg"

// ResolvePhoto picks the uploaded payload, then the URL, then the placeholder.
func ResolvePhoto(o *Obituary) string {
	if o.PhotoFile != nil && o.PhotoFile.Data != "" {
		return o.PhotoFile.Data
	}
	if o.Photo != "" {
		return o.Photo
	}
	if o.PhotoFile != nil && o.PhotoFile.URL != "" {
		return o.PhotoFile.URL
	}
	return PlaceholderPhoto
}
