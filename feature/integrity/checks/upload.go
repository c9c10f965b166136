package checks

import (
	"context"
	"fmt"
	"path"
	"strings"

	"arcade-catalog/core/model"
	"arcade-catalog/core/storage"
	"arcade-catalog/feature/export"
)

// CheckUpload returns the files missing from an uploaded export below prefix. The manifest is
// always required; once any CSV file is present every table's CSV is.
func CheckUpload(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	objects, err := storage.ListAll(ctx, client, bucket, folder(prefix))
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(objects))
	hasCSV := false
	for _, obj := range objects {
		name := path.Base(obj.Key)
		present[name] = true
		if strings.HasSuffix(name, ".csv") {
			hasCSV = true
		}
	}

	var missing []string
	if !present[export.ManifestFile] {
		missing = append(missing, export.ManifestFile)
	}
	if hasCSV {
		for _, flat := range (&model.Tables{}).Flatten() {
			if name := flat.Name + ".csv"; !present[name] {
				missing = append(missing, name)
			}
		}
	}
	return missing, nil
}
