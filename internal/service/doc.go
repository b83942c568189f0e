// Package service builds the asetgraph datasources and the operations layered
// on top of them.
//
// # Datasources
//
// DataSources holds one datasource per collection (sektor, organisasi, entity,
// vulner) plus one edge datasource per relation. It is created once at startup
// on a shared connector and handed to request handlers via WithDataSources.
//
// # Relations
//
// Relation implements assign, remove, existence check and listing for an edge
// collection linking two document collections. Bare keys are normalized onto
// the endpoint collection before they are stored or matched. Listing joins the
// edge table with the opposite document table, so edges whose document has
// been deleted are skipped. SektorOrganisasiAPI, OrganisasiAsetAPI and
// AsetVulnerAPI name the three relations in domain terms.
//
// # Events
//
// EventBus delivers domain.Event values for every successful write to its
// subscribers without blocking; slow subscribers miss events.
//
// # Archive
//
// ArchiveService snapshots every collection for export and applies imported
// datasets by merging on _key or replacing collection contents.
package service
