// Package batch routes many documents at once.
//
// 	+-----------+     +-----------+     +-----------+
// 	|   globs   | --> | Documents | --> |  Runner   |
// 	+-----------+     +-----------+     +-----+-----+
// 	                                          |
// 	                        +-----------------+-----------------+
// 	                        |                 |                 |
// 	                  +-----+-----+     +-----+-----+     +-----+-----+
// 	                  |  router 1 |     |  router 2 |     |  router N |
// 	                  +-----------+     +-----------+     +-----------+
// 	                                          |
// 	                              Routings (input order)
// 	                                          |
// 	                       WriteRoutings / WriteMatches / AgeReport
//
// 🎯 Purpose:
// - Loads documents from files and json arrays
// - Routes them on N workers, one router each
// - Writes the routing and match reports
//
// 🔍 Example:
//
// 	docs, err := batch.LoadDocuments(ctx, []string{"corpus/**/*.json"}, "")
// 	if err != nil {
// 		return err
// 	}
// 	runner, err := batch.NewRunner(opts, batch.WithWorkers(8))
// 	if err != nil {
// 		return err
// 	}
// 	routings, err := runner.Run(ctx, docs)
package batch
