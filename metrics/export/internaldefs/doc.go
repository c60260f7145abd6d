// Package internaldefs holds the metric name and help-text tables shared by
// the exporters. It exists so exporter packages agree on naming without
// duplicating the tables.
package internaldefs
