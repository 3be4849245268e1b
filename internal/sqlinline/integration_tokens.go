package sqlinline

const QIntegrationTokenGet = `--sql 3b0e6a57-9d21-4c8e-a5f4-1e7c2d90b6af
select token
from integration_tokens
where provider = $1::text;
`

const QIntegrationTokenUpsert = `--sql c71f4e0a-52b8-4d6e-9f03-8a2b5e1d47c9
insert into integration_tokens (provider, token)
values ($1::text, $2::text)
on conflict (provider) do update set
    token = excluded.token,
    updated_at = now();
`
