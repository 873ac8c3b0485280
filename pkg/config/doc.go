/*
Package config loads figtriage vocabularies and routing options.

	                +-------------+
	                |   Config    |
	                | (Settings)  |
	                +------+------+
	                       |
	      +----------------+----------------+
	      |                |                |
	+-----+-----+    +-----+-----+    +-----+-----+
	|   YAML    |    |    HCL    |    |   JSON    |
	|  Parser   |    |  Parser   |    |  Parser   |
	+-----------+    +-----------+    +-----------+
	                       |
	                +------+------+
	                | term files  |
	                +------+------+
	                       |
	                router.Options

🎯 Purpose:
- Picks a parser by file extension
- Fills in routing defaults
- Merges inline terms with term files

📄 Term files:
One term per line. Blank lines and lines starting with '#' are skipped.
Lines are trimmed, except for age exclude files where spaces are part of
the term (a leading space in " ts" keeps it from matching "parts").

🔍 Example:

	cfg, err := config.Load(ctx, "figtriage.yaml")
	if err != nil {
		return err
	}
	opts, err := cfg.RouterOptions(cfg.Dir())
	if err != nil {
		return err
	}
	r, err := router.New(opts)
*/
package config
