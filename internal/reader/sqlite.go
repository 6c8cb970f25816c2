package reader

// SQLite has no owners: queries take no parameters and every object is
// read with an empty owner. Primary keys and foreign keys are unnamed in
// the catalog and get PK_<table> and FK_<table>_<id> names.
var sqliteCatalog = &catalog{
	tables: `
SELECT '', name, ''
FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`,

	columns: `
SELECT '', m.name, p.name, p.type, NULL, NULL, NULL,
       CASE WHEN p."notnull" = 0 AND p.pk = 0 THEN 1 ELSE 0 END,
       p.dflt_value,
       CASE WHEN p.pk = 1 AND upper(m.sql) LIKE '%AUTOINCREMENT%' THEN 1 ELSE 0 END,
       ''
FROM sqlite_master m
JOIN pragma_table_info(m.name) p
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%'
ORDER BY m.name, p.cid`,

	constraints: []string{`
SELECT '', m.name, 'PK_' || m.name, 'P', p.name, p.pk, NULL,
       NULL, NULL, NULL, NULL, NULL
FROM sqlite_master m
JOIN pragma_table_info(m.name) p
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND p.pk > 0
ORDER BY m.name, p.pk`, `
SELECT '', m.name, il.name, 'U', ii.name, ii.seqno + 1, NULL,
       NULL, NULL, NULL, NULL, NULL
FROM sqlite_master m
JOIN pragma_index_list(m.name) il
JOIN pragma_index_info(il.name) ii
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND il.origin = 'u'
ORDER BY m.name, il.name, ii.seqno`, `
SELECT '', m.name, 'FK_' || m.name || '_' || f.id, 'F', f."from", f.seq + 1, NULL,
       '', f."table", f."to", f.on_delete, f.on_update
FROM sqlite_master m
JOIN pragma_foreign_key_list(m.name) f
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%'
ORDER BY m.name, f.id, f.seq`},

	indexes: `
SELECT '', m.name, il.name, '', il."unique", ii.name, ii.seqno + 1, ii."desc"
FROM sqlite_master m
JOIN pragma_index_list(m.name) il
JOIN pragma_index_xinfo(il.name) ii
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND il.origin = 'c' AND ii.key = 1
ORDER BY m.name, il.name, ii.seqno`,

	triggers: `
SELECT '', tbl_name, name, sql, NULL, NULL
FROM sqlite_master
WHERE type = 'trigger'
ORDER BY tbl_name, name`,

	views: `
SELECT '', name, sql
FROM sqlite_master
WHERE type = 'view'
ORDER BY name`,
}
