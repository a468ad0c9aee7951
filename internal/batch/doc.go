/*
Package batch drives one conversion run over every archive in an upload
directory.

Archives are processed one at a time in path order. For each archive the
driver:

 1. opens and validates the zip, skipping it when malformed,
 2. extracts its replays into the scratch directory,
 3. decodes every replay on a pool of workers,
 4. walks the decoded replays in archive order, assigning game indices,
    building records and handing each complete game to the Sink,
 5. clears the scratch directory and, if configured, removes the archive.

Only step 3 runs concurrently. Index assignment and writing happen on the
calling goroutine, so the output does not depend on the number of workers.

A problem with one archive or one replay is logged and recorded as a skip;
the run continues. A Sink failure stops the run.
*/
package batch
